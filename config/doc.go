// Package config loads taskmanager configuration through Viper.
//
// Values come from a YAML file (optional) and environment variables. The
// deployment variables used by the service are bound explicitly:
//
//	PORT                -> server.port
//	CLIENT_URL          -> frontend.client_url
//	MONGO_URI           -> data.mongodb.uri
//	JWT_SECRET          -> auth.jwt.secret
//	ADMIN_INVITE_TOKEN  -> auth.admin_invite_token
//
// Any other key can be overridden with its upper-cased, underscore-separated
// form, e.g. DATA_REDIS_ADDR for data.redis.addr.
//
// Example YAML:
//
//	server:
//	  host: 0.0.0.0
//	  port: 5000
//	data:
//	  mongodb:
//	    uri: mongodb://localhost:27017
//	    database: taskmanager
//	  redis:
//	    addr: localhost:6379
//	auth:
//	  jwt:
//	    secret: change-me
//	    expire: 168h
//
// Watch reloads the file on change and hands the new Config to a callback.
package config
