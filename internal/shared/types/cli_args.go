package types

// CLIArgs represents the command-line arguments shared by every subcommand.
type CLIArgs struct {
	ConfigFile string
	Profile    string
	Region     string
	Bucket     string
	Dir        string
}

// LocalOutput reports whether artifacts go to a local directory instead of S3.
func (a CLIArgs) LocalOutput() bool {
	return a.Dir != ""
}
