package constants

const (
	AppName = "cotask"
	Version = "v0.3.0"

	// DefaultAddr is the address the HTTP server binds to when none is given.
	DefaultAddr = ":8080"

	// DefaultConfigPath is the default SQLite database location.
	DefaultConfigPath = "~/.config/cotask/cotask.db"

	// TodoRewardCoins is the coin amount granted when a todo is created and
	// again when it transitions from incomplete to complete.
	TodoRewardCoins = 5

	// Defaults applied to workspace tasks created without explicit values.
	DefaultTaskStatus   = "todo"
	DefaultTaskPriority = "medium"

	// Habit toggle actions.
	ActionComplete   = "complete"
	ActionUncomplete = "uncomplete"
)
