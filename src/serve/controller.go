package serve

import (
	"github.com/dapplist/registry/src/gateway"
	"github.com/dapplist/registry/src/registry"
	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/model"
	"github.com/dapplist/registry/src/utils/monitoring"
	monitor_registry "github.com/dapplist/registry/src/utils/monitoring/registry"
	"github.com/dapplist/registry/src/utils/publisher"
	"github.com/dapplist/registry/src/utils/task"
	"github.com/dapplist/registry/src/verify"
)

type Controller struct {
	*task.Task
}

// Orchestrates the registry service: the in-memory engine, the
// verification coordinator, persistence, publishing and the REST
// gateway. The engine lives outside the watchdog so its state survives
// restarts of the transport tasks.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	monitor := monitor_registry.NewMonitor().
		WithMaxHistorySize(30)

	server := monitoring.NewServer(config).
		WithMonitor(monitor)

	engine, err := registry.NewEngine(config)
	if err != nil {
		return
	}
	engine = engine.WithMonitor(monitor)

	watched := func() *task.Task {
		db, err := model.NewConnection(self.Ctx, self.Config, "registry")
		if err != nil {
			panic(err)
		}

		coordinator := verify.NewCoordinator(config).
			WithEngine(engine).
			WithProber(verify.NewClient(config)).
			WithEscrow(verify.NewEscrowClient(config)).
			WithMonitor(monitor)

		store := registry.NewStore(config).
			WithDB(db).
			WithInputChannel(engine.Notifications).
			WithMonitor(monitor)

		redisPublisher := publisher.NewRedisPublisher[*model.ListingNotification](config, "redis-publisher").
			WithInputChannel(store.Output).
			WithMonitor(monitor)

		gatewayServer := gateway.NewServer(config).
			WithEngine(engine).
			WithMonitor(monitor)

		auditor := registry.NewAuditor(config).
			WithEngine(engine).
			WithMonitor(monitor)

		return task.NewTask(config, "watched-registry").
			WithSubtask(coordinator.Task).
			WithSubtask(store.Task).
			WithSubtask(redisPublisher.Task).
			WithSubtask(gatewayServer.Task).
			WithSubtask(auditor.Task)
	}

	watchdog := task.NewWatchdog(config).
		WithTask(watched).
		WithIsOK(func() bool {
			isOK := monitor.IsOK()
			if !isOK {
				monitor.GetReport().Run.Errors.NumWatchdogRestarts.Inc()
			}
			return isOK
		})

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(server.Task).
		WithSubtask(watchdog.Task)

	return
}
