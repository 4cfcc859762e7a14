// FILE: example/main.go
package main

import (
	"fmt"
	"math"

	"github.com/lixenwraith/envconfig"
)

// AppConfig is filled from the environment after resolution
type AppConfig struct {
	JWTSecret   string  `env:"JWT_SECRET"`
	Host        string  `env:"HOST"`
	Version     float64 `env:"VERSION"`
	Port        int     `env:"PORT"`
	SomeMoreVar string  `env:"SOME_MORE_VAR"`
	AutoSave    bool    `env:"AUTO_SAVE"`
}

func main() {
	tmpl := envconfig.NewTemplate().
		Add("JWT_SECRET", "").      // mandatory string variable
		Add("HOST", "0.0.0.0").     // optional string variable
		Add("VERSION", math.NaN()). // mandatory numeric variable
		Add("PORT", 8100).          // optional numeric variable
		Add("SOME_MORE_VAR", "").
		Add("AUTO_SAVE", false) // optional boolean variable

	// Values from .env sit below the process environment.
	// Missing mandatory keys print "Missing ... in env" and exit 1.
	tmpl = envconfig.NewBuilder().
		WithTemplate(tmpl).
		WithEnvFile(".env").
		MustBuild()

	var cfg AppConfig
	if err := tmpl.Scan(&cfg); err != nil {
		fmt.Println("scan failed:", err)
		return
	}
	fmt.Printf("Listening on %s:%d (version %v)\n", cfg.Host, cfg.Port, cfg.Version)

	changed, err := envconfig.Save(tmpl, envconfig.SaveOptions{File: ".env"})
	if err != nil {
		fmt.Println("save failed:", err)
		return
	}
	if changed {
		fmt.Println(".env updated")
	}
}
