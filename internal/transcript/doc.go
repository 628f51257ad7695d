// Package transcript defines the Utterance record shared by the remix pipeline
// and persists aligned transcripts as CSV so later runs can skip transcription.
//
// The CSV layout is a header row followed by one row per utterance:
//
//	start,end,speaker,text
//	0,1.5,SKINNER,Hello there!
//
// Times are written with the shortest decimal form that parses back to the
// same float64, so Load(Save(u)) reproduces every value exactly.
package transcript
