package alerts

// Config selects where unmatched observations are delivered.
type Config struct {
	// GitHubOutput is the step output file. Empty falls back to $GITHUB_OUTPUT.
	GitHubOutput string `mapstructure:"github_output" default:""`
	// OutputName is the name of the step output.
	OutputName string `mapstructure:"output_name" default:"warning"`
	// TelegramToken enables the Telegram sink when set.
	TelegramToken string `mapstructure:"telegram_token" default:""`
	// TelegramChatID is the chat receiving alerts.
	TelegramChatID int64 `mapstructure:"telegram_chat_id" default:"0"`
}
