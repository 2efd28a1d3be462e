package main

import (
	_ "github.com/schoolpulse/backend/docs"
	"github.com/schoolpulse/backend/internal/bootstrap"
)

// @title SchoolPulse API
// @version 1.0.0
// @description Monitoring dashboard backend: school condition reports, community feedback, strategic insight, and a realtime voice channel.

// @BasePath /v1

// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name pulse_session

func main() {
	bootstrap.Run()
}
