// Tidecast is a Monte Carlo simulation engine for marine conservation
// policy analysis.
//
// It evaluates intervention scenarios against policy frameworks by running
// stochastic outcome trajectories, then reports statistical summaries, risk
// profiles, and recommendations:
//
//	# Run a simulation request and wait for results
//	tidecast run --request request.yaml
//
//	# List the available policy frameworks
//	tidecast frameworks
//
//	# Inspect a stored run (requires the sqlite backend)
//	tidecast status <run-id>
//	tidecast results <run-id>
//
//	# Watch a directory for request files and execute them as they land
//	tidecast watch
//
//	# Show version information
//	tidecast version
package main

func main() {
	Execute()
}
