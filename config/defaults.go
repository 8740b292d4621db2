package config

func DefaultSettings() *Settings {
	return &Settings{}
}

func GenerateSettingsTemplate() string {
	return `# calchat settings
# Location: ~/.config/calchat/settings.toml
# This file uses TOML format: https://toml.io

# Webhook that receives each message as a JSON POST (optional).
# Can also be set with CALCHAT_WEBHOOK_URL or --webhook-url, or typed
# into the configuration panel (Alt+W) at runtime.
# webhook_url = "https://your-n8n-instance.com/webhook/your-webhook-id"

# First assistant message of each conversation. Set to "" to disable.
# greeting = "Hi! I'm your calendar assistant."

# Directory for debug.log (only written when CALCHAT_DEBUG=1 or --debug)
# data_directory = "~/.local/share/calchat"
`
}
