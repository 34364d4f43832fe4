package main

import (
	"log"

	"github.com/fmuoria/recruiter-dashboard/internal/gui"
)

func main() {
	log.Println("Starting Recruiter Dashboard...")

	dashboard := gui.NewApp()
	dashboard.Run()
}
