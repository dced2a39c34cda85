package config

// StoredConfig is the persisted record of author and starter-theme defaults.
// Every field is optional; WithDefaults and Save fill the gaps.
type StoredConfig struct {
	AuthorName string `json:"authorName"` // Author name stamped into theme headers
	AuthorURI  string `json:"authorURI"`  // Author homepage stamped into theme headers
	Theme      string `json:"theme"`      // Starter theme repository or archive URL
}

// Project describes one upstream project whose latest version is discovered from GitHub tags.
// - Repo: owner/name on GitHub (e.g., twbs/bootstrap).
// - Fallback: version used whenever the lookup fails.
type Project struct {
	Repo     string `yaml:"repo"`
	Fallback string `yaml:"fallback"`
}

// Versions groups the three upstream projects and the strategy used to pick "latest".
type Versions struct {
	Strategy    string  `yaml:"strategy"` // "last" (default) or "semver"
	WordPress   Project `yaml:"wordpress"`
	Bootstrap   Project `yaml:"bootstrap"`
	FontAwesome Project `yaml:"font_awesome"`
}

// GitHub holds the endpoints used for tag lookups and archive downloads.
type GitHub struct {
	APIURL     string `yaml:"api_url"`     // REST API base, e.g. https://api.github.com
	ArchiveURL string `yaml:"archive_url"` // Web base archives are served from, e.g. https://github.com
}

// Tools names the external executables invoked by the generator.
type Tools struct {
	NPM   string `yaml:"npm"`
	Grunt string `yaml:"grunt"`
	WP    string `yaml:"wp"`
}

// Settings is the top-level structure of the optional settings YAML file.
type Settings struct {
	GitHub   GitHub   `yaml:"github"`
	Versions Versions `yaml:"versions"`
	Tools    Tools    `yaml:"tools"`
}
