/*
Package observability turns session lifecycle events into metrics and logs.

Everything here is a domain.LifecycleHooks value, so it plugs into
automata.WithLifecycleHooks or session.WithHooks:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Chain(metrics.Hooks(), observability.LoggingHooks(logger))
*/
package observability
