package config

const (
	// DefaultConfigFile is the config file looked up in the working directory
	DefaultConfigFile = "shardctl.toml"
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSuiteName prefixes every group label
	DefaultSuiteName = "python"
	// DefaultResultsDir is where results and per-group logs are written
	DefaultResultsDir = "build/pytest-results"
	// DefaultShardCount is used when the config declares no shard count
	DefaultShardCount = 1
	// EnvShardIndex selects a shard when no positional selector is given
	EnvShardIndex = "SHARDCTL_SHARD_INDEX"
	// EnvResultsDSN enables the SQL results sink when set
	EnvResultsDSN = "SHARDCTL_RESULTS_DSN"
)

// DefaultRunnerCommand runs one group. Placeholders: {target}, {label}, {results_dir}, {project}.
var DefaultRunnerCommand = []string{
	"python3", "-m", "pytest",
	"-o", "junit_suite_name={label}",
	"--junit-xml={results_dir}/{label}.xml",
	"{target}",
}

// DefaultDiscoveryCommand lists identifiers under {root} without running them
var DefaultDiscoveryCommand = []string{
	"python3", "-m", "pytest", "--collect-only", "-q", "{root}",
}

// DefaultFailExitCodes are runner exit codes classified as a test failure
// rather than an error
var DefaultFailExitCodes = []int{1}

// DefaultPathsToIgnore are the directories skipped by the filesystem scanner
var DefaultPathsToIgnore = []string{
	"__pycache__",
	"node_modules",
	"build",
	"dist",
	"venv",
}
