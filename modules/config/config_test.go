package config_test

import (
	"context"
	"testing"

	"bounty-node/modules/config"
)

func TestBasic(t *testing.T) {
	type conf struct {
		A uint
		B string
	}
	c := config.New(conf{1, "hi"})
	err := c.Init()
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Start().Await(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c.Get().A != 1 || c.Get().B != "hi" {
		t.Fatal("defaults not applied")
	}
	err = c.Stop()
	if err != nil {
		t.Fatal(err)
	}
}
