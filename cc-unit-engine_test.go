package main

import (
	"os"
	"path/filepath"
	"testing"

	ccconf "github.com/ClusterCockpit/cc-lib/ccConfig"

	ua "github.com/ClusterCockpit/cc-unit-engine/internal/unitApi"
	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
	ue "github.com/ClusterCockpit/cc-unit-engine/pkg/unitExpr"
)

func writeConfig(t *testing.T, name, content string) {
	if err := os.WriteFile(name, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestReadMainConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, name, `{"main": {"region": "US", "output": "html", "precision": 3, "eval_cache_size": 64}}`)
	ccconf.Init(name)

	rcfg := RuntimeConfig{CliArgs: map[string]string{"configfile": name, "output": "xml"}}
	if err := readMainConfig(&rcfg); err != nil {
		t.Fatal(err)
	}
	c := rcfg.ConfigFile
	if c.Region != "US" || c.Output != "xml" || c.Precision != 3 || c.CacheSize != 64 {
		t.Errorf("main config == %+v", c)
	}

	writeConfig(t, name, `{"main": {"precision": -1}}`)
	ccconf.Init(name)
	if err := readMainConfig(&rcfg); err == nil {
		t.Error("negative precision must fail")
	}
}

func TestReloadRegion(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, name, `{"main": {"region": "UK"}}`)
	ccconf.Init(name)

	catalog := ccunits.NewCatalog(ccunits.RegionUK)
	evaluator := ue.NewEvaluator(catalog)
	api, err := ua.New(nil, evaluator, nil)
	if err != nil {
		t.Fatal(err)
	}
	rcfg := &RuntimeConfig{
		CliArgs:   map[string]string{"configfile": name},
		Catalog:   catalog,
		Evaluator: evaluator,
		Api:       api,
	}

	// half written files keep the current region
	writeConfig(t, name, `{"main": {"region": "US"`)
	if err := reloadConfig(name); err == nil {
		t.Error("reloading invalid JSON must fail")
	}
	reloadRegion(rcfg)
	if catalog.Region() != ccunits.RegionUK {
		t.Errorf("region after invalid reload == %v", catalog.Region())
	}

	writeConfig(t, name, `{"main": {"region": "US"}}`)
	reloadRegion(rcfg)
	if catalog.Region() != ccunits.RegionUS {
		t.Errorf("region after reload == %v, want US", catalog.Region())
	}

	// the command line wins over the file
	rcfg.CliArgs["region"] = "US"
	writeConfig(t, name, `{"main": {"region": "UK"}}`)
	reloadRegion(rcfg)
	if catalog.Region() != ccunits.RegionUS {
		t.Errorf("region with -region US == %v", catalog.Region())
	}
}
