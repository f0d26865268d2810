package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mkidawa/smAIcznego/internal/devenv"
	"github.com/mkidawa/smAIcznego/internal/logging"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run the development database and Authorizer containers with the environment
variables from the .env file.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	zlog, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var stack *devenv.Stack
	go func() {
		var err error
		stack, err = devenv.Start(context.Background(), zlog)
		if err != nil {
			log.Fatalf("Failed to start development stack: %v\n", err)
		}
		fmt.Printf("DB=%s\nAUTHZ_URL=%s\n", stack.DBHostPort, stack.AuthorizerURL)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating development stack...\n", sig)
	if stack != nil {
		stack.Terminate(zlog)
	}
}
