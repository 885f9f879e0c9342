package cmd

import (
	"os"
	"os/user"
)

// Globals are the flags shared by every command. Their defaults can come
// from a configuration file.
type Globals struct {
	Name   string     `short:"n" help:"Device name, e.g. PressureSensor" default:"Device" env:"YAMBUSC_NAME"`
	Dir    string     `short:"d" help:"Project directory" default:"." type:"path" env:"YAMBUSC_DIR"`
	Author string     `short:"a" help:"Author recorded in the device metadata" default:"${author}" env:"YAMBUSC_AUTHOR"`
	Log    LogOptions `embed:"" prefix:"log."`
}

type LogOptions struct {
	Level string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"YAMBUSC_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"YAMBUSC_LOG_FILE"`
}

// DefaultAuthor is the login name of the current user, used when no author
// is configured.
func DefaultAuthor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "unknown"
}
