/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence over environment variables:

	-p / PORT               server port (default 5000)
	-d / DATABASE_URL       database connection string (required)
	-t / DATABASE_TYPE      sqlite or postgres (default postgres)
	-ip-salt / IP_HASH_SALT salt for voter address hashing (required)
*/
package cliparse
