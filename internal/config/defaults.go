package config

const (
	defaultOutputDir         = "~/.local/share/hamremix/output"
	defaultStateDir          = "~/.local/share/hamremix"
	defaultVideo             = "resources/SteamedHams.mp4"
	defaultDialogue          = "resources/dialogue.csv"
	defaultDialogueDelimiter = ";"
	defaultWhisperXModel     = "base"
	defaultVADMethod         = "silero"
	defaultLanguage          = "en"
	defaultMetric            = MetricTokenSort
	defaultMinScore          = 50
	defaultSegmentSeconds    = 1.0
	defaultOutputBase        = "steamed_hams"
	defaultTranscriptBase    = "transcript"
	defaultFontSize          = 28
	defaultFontColor         = "white"
	defaultVideoCodec        = "libx264"
	defaultAudioCodec        = "aac"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultPlayer            = "ffplay"
	defaultWindowTitle       = "You call hamburgers steamed hams?"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Similarity metrics understood by the aligner.
const (
	MetricTokenSort = "token_sort"
	MetricCosine    = "cosine"
)

// DefaultSpeakers is the allow-list of speakers whose lines may be shuffled.
var DefaultSpeakers = []string{"SKINNER", "CHALMERS", "AGNES", "NARRATOR"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
		},
		Source: Source{
			Video:             defaultVideo,
			Dialogue:          defaultDialogue,
			DialogueDelimiter: defaultDialogueDelimiter,
		},
		Transcription: Transcription{
			WhisperXModel: defaultWhisperXModel,
			VADMethod:     defaultVADMethod,
			Language:      defaultLanguage,
		},
		Alignment: Alignment{
			Metric:   defaultMetric,
			MinScore: defaultMinScore,
		},
		Shuffle: Shuffle{
			AllowedSpeakers: append([]string(nil), DefaultSpeakers...),
			SegmentSeconds:  defaultSegmentSeconds,
			OutputBase:      defaultOutputBase,
			TranscriptBase:  defaultTranscriptBase,
		},
		Render: Render{
			Captions:      true,
			FontSize:      defaultFontSize,
			FontColor:     defaultFontColor,
			Box:           true,
			VideoCodec:    defaultVideoCodec,
			AudioCodec:    defaultAudioCodec,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Playback: Playback{
			Enabled:     false,
			Player:      defaultPlayer,
			WindowTitle: defaultWindowTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
