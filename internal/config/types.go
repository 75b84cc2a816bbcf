package config

// File 表示 credkeep.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Format   string  `yaml:"format"`    // json|yaml|table|csv|auto
	LogLevel string  `yaml:"log_level"` // debug|info|warn|error
	Backend  Backend `yaml:"backend"`
	MCP      MCP     `yaml:"mcp"`
}

type Backend struct {
	Type string `yaml:"type"` // keyring | ring | memory
	Ring Ring   `yaml:"ring"`
}

// Ring 对应 99designs/keyring 的配置。
type Ring struct {
	Allowed      []string `yaml:"allowed"`
	FileDir      string   `yaml:"file_dir"`
	KeychainName string   `yaml:"keychain_name"`
	PassDir      string   `yaml:"pass_dir"`
}

type MCP struct {
	Transport   string  `yaml:"transport"`    // stdio | streamable_http
	AllowReveal bool    `yaml:"allow_reveal"` // 是否注册 credential_retrieve
	HTTP        MCPHTTP `yaml:"http"`
}

type MCPHTTP struct {
	Addr                string `yaml:"addr"`
	AuthToken           string `yaml:"auth_token"` // 支持 keyring:xxx 引用
	AllowPlaintextToken bool   `yaml:"allow_plaintext_token"`
}

type Resolved struct {
	ConfigPath string
	Format     string
	LogLevel   string
	Backend    Backend // Type 已合并 CLI/ENV
	File       File
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// CLI
	CLIFormat      string
	CLIFormatSet   bool
	CLILogLevel    string
	CLILogLevelSet bool
	CLIBackend     string
	CLIBackendSet  bool

	// ENV（由调用方注入，便于测试）
	EnvFormat   string
	EnvLogLevel string
	EnvBackend  string

	// HomeDir 用于默认路径计算（为空则自动探测）。
	HomeDir string

	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string
}
