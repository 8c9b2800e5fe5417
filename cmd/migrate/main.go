package main

import (
	"fmt"
	"os"
	"strconv"

	helpers "github.com/Lineblocs/go-helpers"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/utils"
)

func main() {
	logDestination := utils.Config("LOG_DESTINATIONS")
	helpers.InitLogrus(logDestination)
	logger := logrus.WithField("component", "migrate")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	source := "file://" + utils.ConfigDefault("MIGRATIONS_DIR", "migrations")
	m, err := migrate.New(source, utils.MigrationDatabaseURL())
	if err != nil {
		logger.WithError(err).Fatal("could not initialise migrations")
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			logger.Warnf("could not close migration resources: %v, %v", sourceErr, dbErr)
		}
	}()

	switch os.Args[1] {
	case "up":
		err = ignoreNoChange(m.Up())
	case "down":
		err = m.Steps(-1)
	case "goto":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		var version uint64
		version, err = strconv.ParseUint(os.Args[2], 10, 64)
		if err == nil {
			err = ignoreNoChange(m.Migrate(uint(version)))
		}
	case "status":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			logger.Info("no migrations applied yet")
			return
		}
		err = verr
		if err == nil {
			logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("migration status")
		}
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.WithError(err).Fatalf("migrate %s failed", os.Args[1])
	}
	logger.Infof("migrate %s finished", os.Args[1])
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func printUsage() {
	fmt.Println("usage: migrate up | down | goto <version> | status")
}
