// Package config provides configuration parsing for htmlkit.
//
// The configuration is stored in htmlkit.yaml (or htmlkit.json) next to the
// form definitions. This package handles loading, saving, and validating
// configuration.
//
// # Configuration File Structure
//
//	render:
//	  pretty: true
//	  showStackTrace: false
//	server:
//	  host: localhost
//	  port: 8080
//	  metrics: true
//	log:
//	  level: debug
//	forms:
//	  - forms
//	  - extra/signup.yaml
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
