package generator

// Static expansion data. These lists are immutable configuration: nothing in
// the package mutates them after init.

// basePrefixes is the hand-curated high-probability layer applied in every mode.
var basePrefixes = []string{
	"www", "mail", "api", "admin", "blog", "dev", "staging", "test",
	"mobile", "static", "cdn", "portal", "app", "secure", "vpn", "m",
	"old", "new",
}

// commonPrefixes is the extended dictionary layer: infrastructure roles,
// mail/DNS plumbing, commerce, dev environments and storage terms.
var commonPrefixes = []string{
	"www", "mail", "ftp", "smtp", "pop", "imap", "webmail",
	"admin", "administrator", "login", "dashboard", "panel",
	"api", "api2", "api3", "vpn", "remote", "ssh",
	"dev", "development", "staging", "test", "qa",
	"blog", "news", "forum", "support", "help", "docs",
	"app", "apps", "application", "portal", "hub",
	"static", "assets", "cdn", "media", "images", "img",
	"shop", "store", "ecommerce", "payment", "pay",
	"m", "mobile", "wap", "i", "iphone",
	"secure", "ssl", "safe", "private",
	"cpanel", "whm", "webdisk", "webhost",
	"ns1", "ns2", "ns3", "dns", "mx", "mx1", "mx2",
	"git", "svn", "repo", "code",
	"status", "monitor", "monitoring", "metrics",
	"db", "database", "sql", "mysql", "postgres",
}

// environments is ordered from most to least common; the normal mode uses
// only the first three entries, ultimate geo crosses use the first four.
var environments = []string{"dev", "test", "staging", "prod", "production", "uat", "qa"}

var geoPrefixes = []string{"us", "uk", "eu", "de", "fr", "jp", "sg", "au", "in"}

// comboWords feeds the permutations-of-combinations layer. Keep it at six
// entries: three-word arrangements already yield 120 candidates and the layer
// grows factorially with vocabulary size.
var comboWords = []string{"admin", "api", "web", "app", "dev", "test"}

var multiLevelRoles = []string{"app", "web", "api", "service"}

var numericRoles = []string{"web", "app", "api", "server", "node", "host"}

var specialTokens = []string{
	"alpha", "beta", "gamma",
	"internal", "external", "legacy", "modern",
	"cloud", "aws", "azure",
	"office", "home", "remote",
}
