// Package config provides configuration parsing for vlite.
//
// The configuration is stored in vlite.yaml. Every field has a default, so
// an empty or missing file yields a working in-memory setup.
//
// # Configuration File Structure
//
//	app: todo
//	server:
//	  host: localhost
//	  port: 8080
//	  readTimeout: 15s
//	  writeTimeout: 15s
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: vlite
//	  path: /metrics
//	tracing:
//	  enabled: false
//	  tracerName: vlite
//	persist:
//	  backend: redis
//	  key: todoApp
//	  redis:
//	    addr: localhost:6379
//	    prefix: "vlite:"
//	    ttl: 24h
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Server.Port)
package config
