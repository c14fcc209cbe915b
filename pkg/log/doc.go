/*
Package log provides structured logging for diskwatchd using zerolog.

It wraps zerolog with a global logger, JSON or console output, and
component/source/subscription-scoped child loggers.

Initializing:

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Component and correlation loggers:

	dispLog := log.WithComponent("dispatcher")
	dispLog.Info().Msg("draining event queue")

	subLog := log.WithSubscription(subID.String())
	subLog.Info().Str("source_id", "disk").Msg("subscription opened")
*/
package log
