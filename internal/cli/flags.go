package cli

// Output formats for the features command
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FeaturesOptions are the flags of the features command.
type FeaturesOptions struct {
	Input   string
	Output  string // empty or "-" writes to stdout
	Format  string
	Labeled bool
	Store   bool
	Verbose bool
}

// EvaluateOptions are the flags of the evaluate command.
type EvaluateOptions struct {
	Input     string
	Feature   string
	Threshold float64
	Verbose   bool
}

// RunsOptions are the flags of the runs command.
type RunsOptions struct {
	Limit int
}

// ServeOptions holds the flags for the serve command. A zero Port keeps
// the configured one.
type ServeOptions struct {
	Port    int
	Verbose bool
}

// MergeOptions are the flags of the merge command. Inputs are labeled CSV
// files or directories of them; the labeler is taken from each file name
// up to the first "." or "-". When TestOutput is set, users are split
// between Output and TestOutput by TrainRatio.
type MergeOptions struct {
	Inputs     []string
	Output     string
	TestOutput string
	TrainRatio float64
	Seed       uint64
	MinVotes   int
	MinScore   float64
	Verbose    bool
}
