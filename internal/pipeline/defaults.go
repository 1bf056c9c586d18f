package pipeline

// defaultCommands is the built-in whitelist of read-only commands.
var defaultCommands = []string{
	// Filesystem listing
	"ls", "tree", "stat", "file", "du", "df",
	// File reading
	"cat", "head", "tail", "less", "more", "tac",
	// Search
	"grep", "rg", "fd", "find", "locate", "strings", "ag",
	// Text processing (sed -i is caught by its handler)
	"sed", "cut", "paste", "tr", "sort", "uniq", "comm", "join",
	"fmt", "column", "nl", "rev", "fold", "expand", "unexpand",
	"wc", "xargs",
	// Structured data
	"jq", "yq",
	// Diffing
	"diff", "cmp",
	// Path utilities
	"readlink", "realpath", "basename", "dirname",
	// Command lookup
	"which", "type", "whereis",
	// User and host info
	"id", "whoami", "groups", "uname", "hostname", "uptime", "printenv",
	// Checksums
	"sha256sum", "sha1sum", "md5sum", "cksum", "b2sum",
	// Binary viewers
	"xxd", "hexdump", "od",
	// Shell builtins
	"echo", "printf", "true", "false", "test", "[", "read",
	// Process inspection
	"ps", "top", "htop", "lsof", "pgrep",
}

// neverApprove are executables that can bypass the safety model entirely.
// They always fall through, whatever their arguments.
var neverApprove = []string{
	// Shell escape hatches
	"eval", "exec", "source", ".",
	// Privilege elevation
	"sudo", "su",
	// Shell interpreters
	"bash", "sh", "zsh", "fish", "dash", "csh", "ksh",
	// Language interpreters
	"python", "python3", "perl", "ruby", "node", "deno", "bun",
	// Too flexible to analyze
	"parallel",
}

// awkVariants join the never-approve set unless awkSafeMode is on, in
// which case they join the whitelist behind the awk handler instead.
var awkVariants = []string{"awk", "gawk", "mawk", "nawk"}

// gitReadOnly are the always-approved git subcommands.
var gitReadOnly = []string{
	"blame", "diff", "log", "ls-files", "ls-tree",
	"rev-parse", "show", "show-ref", "status",
}

// gitLocalWriteCmds are additionally approved under the gitLocalWrites
// feature flag; they touch only the local repository.
var gitLocalWriteCmds = []string{
	"branch", "tag", "remote", "stash", "add", "config",
}

// wrapperCommands prefix and execute another command; step 2 unwraps them
// transparently until the real executable surfaces.
var wrapperCommands = map[string]bool{
	"env": true, "nice": true, "time": true, "command": true, "nohup": true,
}
