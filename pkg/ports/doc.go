/*
Package ports defines the driving and driven ports (interfaces) of the Automata engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to be exposed over several transports and its reports to be written
to various storage backends.

# Key Interfaces

  - Engine: what transports (HTTP, MCP, CLI) need from the core.
  - ReportStore: persists evaluation reports (memory, Redis, summary-log files).

RunReportStoreContract is a reusable test suite every ReportStore adapter runs.
*/
package ports
