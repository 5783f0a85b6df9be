package policy

// Builtin rule tables. Exact rules match as case-insensitive substrings of
// the subject. Pattern rules are compiled case-insensitively.
//
// The tables deliberately over-approximate: a rule like "format" also hits
// commands that merely mention the word. A blocked safe command costs a
// retry; a missed destructive command costs data.

var builtinCommandExact = []string{
	"rm -rf /",
	"dd if=/dev/zero",
	"mkfs",
	"fdisk",
	"format",
	"del /f /s /q",
	"rd /s /q",
	":(){ :|:& };:",
	"curl | sh",
	"wget | sh",
	"chmod 777",
	"chmod -R 777",
	"sudo su",
	"su -",
}

var builtinCommandPatterns = []string{
	`rm\s+-rf?\s+/[^/\s]*/?$`,
	`dd\s+if=/dev/(zero|random|urandom)`,
	`find\s+/.*-delete`,
	`>(.*)/dev/(sd[a-z]|hd[a-z])`,
	`curl.*\|\s*(sh|bash|zsh)`,
	`wget.*\|\s*(sh|bash|zsh)`,
	`nc\s+-[el].*\s+/bin/(sh|bash)`,
	`python.*-c.*exec\(`,
	`eval\s*\(`,
	`exec\s*\(`,
}

var builtinPathExact = []string{
	"/etc/passwd",
	"/etc/shadow",
	"/etc/sudoers",
	"/root",
	"/boot",
	"/sys",
	"/proc/sys",
	"/dev",
	"/etc/ssh",
	"/home/*/.ssh",
	"~/.ssh",
	"/var/log",
	"/etc/hosts",
	"/etc/crontab",
	"/var/spool/cron",
}

var builtinPathPatterns = []string{
	`/etc/.*`,
	`/root/.*`,
	`/boot/.*`,
	`/sys/.*`,
	`/proc/sys/.*`,
	`/dev/.*`,
	`.*/\.ssh/.*`,
	`/var/log/.*`,
	`/var/spool/cron/.*`,
	`.*\.key$`,
	`.*\.pem$`,
	`.*\.p12$`,
	`.*\.pfx$`,
	`.*password.*`,
	`.*secret.*`,
	`.*token.*`,
}
