package configkey

const (
	LogLevel  = "log.level"
	DebugMode = "debug"
	Port      = "port"

	DatabaseUsername = "database.username"
	DatabaseDatabase = "database.database"
	DatabaseHost     = "database.host"
	DatabasePort     = "database.port"
	DatabaseSSLMode  = "database.sslmode"
	DatabaseTimezone = "database.timezone"
	DatabasePassword = "database.password"

	APIEnabled = "api.enabled"
	APICode    = "api.code"

	PanelDomain = "panel.domain"
	PanelKey    = "panel.key"

	OAuth2ClientId     = "oauth2.client.id"
	OAuth2ClientSecret = "oauth2.client.secret"
	OAuth2Link         = "oauth2.link"
	OAuth2CallbackPath = "oauth2.callbackpath"
	OAuth2Prompt       = "oauth2.prompt"
	ProviderURL        = "oauth2.provider.url"

	IPTrustForwarded = "ip.trust.forwarded"
	IPDuplicateCheck = "ip.duplicate.check"
	IPBlocked        = "ip.block"

	BotToken         = "bot.token"
	JoinGuildEnabled = "bot.joinguild.enabled"
	JoinGuildIds     = "bot.joinguild.guilds"

	AllowNewUsers     = "allow.newusers"
	AllowServerCreate = "allow.server.create"
	AllowServerDelete = "allow.server.delete"

	CoinsEnabled = "coins.enabled"

	PasswordOnSignup = "passwordgenerator.signup"
	PasswordLength   = "passwordgenerator.length"

	PackagesDefault = "packages.default"
	PackagesList    = "packages.list"
	Locations       = "locations"
	Eggs            = "eggs"

	ThemeDirectory        = "theme.directory"
	ThemeRedirectCallback = "theme.redirect.callback"
	ThemeRedirectLogout   = "theme.redirect.logout"
	ThemeRedirectFailed   = "theme.redirect.failedcallback"
)
