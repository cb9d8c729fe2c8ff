// Package e2e holds the user-service end-to-end scenarios.
//
// By default the scenarios run against the in-process stub. Built with the
// e2e tag they target a real deployment: USER_SERVICE_URL, or a container
// started from USER_SERVICE_IMAGE.
//
//	go test ./internal/e2e/...
//	USER_SERVICE_URL=http://localhost:8080 go test -tags e2e ./internal/e2e/...
//
// Against a long-lived service set SCENARIO_UNIQUE_USER=true, otherwise the
// second run of the save-user scenario is rejected as a duplicate.
package e2e
