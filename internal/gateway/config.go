package gateway

import "time"

type Config struct {
	Timeout  time.Duration  `mapstructure:"timeout"`
	Push     PushConfig     `mapstructure:"push"`
	SMS      SMSConfig      `mapstructure:"sms"`
	WhatsApp WhatsAppConfig `mapstructure:"whatsapp"`
}

type PushConfig struct {
	URL        string `mapstructure:"url"`
	AccountID  string `mapstructure:"account_id"`
	Passcode   string `mapstructure:"passcode"`
	CampaignID string `mapstructure:"campaign_id"`
}

type SMSConfig struct {
	URL               string `mapstructure:"url"`
	UserID            string `mapstructure:"user_id"`
	Password          string `mapstructure:"password"`
	PrincipalEntityID string `mapstructure:"principal_entity_id"`
	OTPTemplateID     string `mapstructure:"otp_template_id"`
	FormTemplateID    string `mapstructure:"form_template_id"`
	// FormLinks maps a language to the form URL embedded in the SMS form message.
	FormLinks map[string]string `mapstructure:"form_links"`
}

type WhatsAppConfig struct {
	URL      string `mapstructure:"url"`
	UserID   string `mapstructure:"user_id"`
	Password string `mapstructure:"password"`
}

const DefaultTimeout = 30 * time.Second

// DefaultConfig holds the public vendor endpoints and template ids.
// Credentials are always supplied by the environment.
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
		Push: PushConfig{
			URL:        "https://api.clevertap.com/1/send/externaltrigger.json",
			CampaignID: "1750575722",
		},
		SMS: SMSConfig{
			URL:               "https://enterprise.smsgupshup.com/GatewayAPI/rest",
			PrincipalEntityID: "1601100000000000654",
			OTPTemplateID:     "1007194642344586649",
			FormTemplateID:    "1007657052465213311",
			FormLinks: map[string]string{
				LanguageEnglish: "https://forms.gle/kXKU5HCtrjKDYZPH9",
				LanguageHindi:   "https://forms.gle/RxSM1cFmpqJ5E5dp9",
			},
		},
		WhatsApp: WhatsAppConfig{
			URL: "https://mediaapi.smsgupshup.com/GatewayAPI/rest",
		},
	}
}
