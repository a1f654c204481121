package registry

import (
	"testing"

	"github.com/dapplist/registry/src/utils/config"
	monitor_registry "github.com/dapplist/registry/src/utils/monitoring/registry"

	"github.com/stretchr/testify/require"
)

func corruptedEngine(t *testing.T) *Engine {
	conf := config.Default()
	conf.Registry.BootstrapGuardians = []string{guardian}

	engine, err := NewEngine(conf)
	require.Nil(t, err)
	engine = engine.WithMonitor(monitor_registry.NewMonitor())

	_, err = engine.Create(&ListingInput{DappAccount: "app.near", Slug: "app", Title: "Test App"}, guardian, nil)
	require.Nil(t, err)
	_, err = engine.CommitVerified(<-engine.Pending)
	require.Nil(t, err)

	return engine
}

func TestAuditDetectsStaleSlugEntry(t *testing.T) {
	engine := corruptedEngine(t)

	engine.index.idBySlug["ghost"] = 42

	violations := engine.Audit()
	require.NotEmpty(t, violations)
}

func TestAuditDetectsDriftedCounter(t *testing.T) {
	engine := corruptedEngine(t)

	engine.disabledCount = 5

	violations := engine.Audit()
	require.Len(t, violations, 1)
	require.Contains(t, violations[0], "disabled counter")
}

func TestAuditDetectsDanglingMembership(t *testing.T) {
	engine := corruptedEngine(t)

	_, err := engine.AddCategory("defi", "DeFi", guardian)
	require.Nil(t, err)
	engine.index.idsByCategory[0][99] = struct{}{}

	violations := engine.Audit()
	require.NotEmpty(t, violations)
}
