package db

import config_ "bounty-node/modules/config"

type DbConfig struct {
	DbURI  string
	DbName string
}

type Config = config_.Config[DbConfig]

func NewDbConfig() *Config {
	return config_.New(DbConfig{
		DbURI:  "mongodb://localhost:27017",
		DbName: "bounty-node",
	})
}
