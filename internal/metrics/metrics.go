package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PoolsScored counts read-path pool scoring requests.
	PoolsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_pools_scored_total",
		Help: "Number of selection pools filtered and value-scored.",
	})

	// ValueBetsFlagged counts selections that cleared the value threshold.
	ValueBetsFlagged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_value_bets_flagged_total",
		Help: "Number of selections flagged as value bets.",
	})

	// AccumulatorsBuilt counts built accumulators by archetype.
	AccumulatorsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_accumulators_built_total",
		Help: "Number of accumulators assembled, by archetype name.",
	}, []string{"archetype"})

	// LedgerToggles counts ledger toggle operations by kind.
	LedgerToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_ledger_toggles_total",
		Help: "Number of ledger toggle operations, by kind.",
	}, []string{"kind"})
)

// Handler exposes the prometheus registry on a gin route.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
