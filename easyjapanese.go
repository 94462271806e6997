package easyjapanese

// Version is set at build time with -ldflags "-X github.com/a-h/easyjapanese.Version=...".
var Version = "dev"
