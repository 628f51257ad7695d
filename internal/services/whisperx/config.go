package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the WhisperX model to use; empty means DefaultModel.
	Model string
	// CUDAEnabled runs on the GPU.
	CUDAEnabled bool
	// VADMethod selects voice activity detection: "silero" or "pyannote".
	VADMethod string
	// HFToken authorizes the pyannote VAD download.
	HFToken string
	// Language is an ISO 639-1 code; empty lets WhisperX detect it.
	Language string
}

// Tuning for a short, dialogue-dense clip: small chunks and tight VAD
// thresholds keep one line per segment.
const (
	DefaultModel      = "base"
	BatchSize         = "8"
	ChunkSize         = "6"
	VADOnset          = "0.30"
	VADOffset         = "0.20"
	BeamSize          = "5"
	Temperature       = "0.0"
	SegmentResolution = "sentence"
	OutputFormat      = "json"
)

const (
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "int8"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}

func (c Config) vadArgs() []string {
	method := c.VADMethod
	if method == "" {
		method = VADMethodSilero
	}
	args := []string{"--vad_method", method}
	if method == VADMethodPyannote && c.HFToken != "" {
		args = append(args, "--hf_token", c.HFToken)
	}
	return args
}

// indexArgs selects the package index uvx resolves torch from.
func (c Config) indexArgs() []string {
	if c.CUDAEnabled {
		return []string{"--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL}
	}
	return []string{"--index-url", PypiIndexURL}
}

func (c Config) deviceArgs() []string {
	if c.CUDAEnabled {
		return []string{"--device", CUDADevice}
	}
	return []string{"--device", CPUDevice, "--compute_type", CPUComputeType}
}
