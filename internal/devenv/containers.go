// Helpers for running the local development stack in containers: the
// database and the Authorizer identity provider. Used by cmd/devdb and by
// integration test setups. Expects environment variables to be loaded from
// .env files.

package devenv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/mkidawa/smAIcznego/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Stack holds the running development containers.
type Stack struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         testcontainers.Container
	AuthorizerContainer testcontainers.Container

	// Localhost endpoints for processes outside the container network.
	DBHostPort    string
	AuthorizerURL string
}

// Terminate tears down the stack in reverse start order.
func (s *Stack) Terminate(log *zap.Logger) {
	ctx := context.Background()
	if s.AuthorizerContainer != nil {
		if err := s.AuthorizerContainer.Terminate(ctx); err != nil {
			log.Warn("failed to terminate authorizer container", zap.Error(err))
		}
	}
	if s.DBContainer != nil {
		if err := s.DBContainer.Terminate(ctx); err != nil {
			log.Warn("failed to terminate database container", zap.Error(err))
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			log.Warn("failed to remove network", zap.Error(err))
		}
	}
}

// Start brings up the database and Authorizer containers on a shared
// network, initializes the application and Authorizer databases, and
// returns the localhost endpoints.
func Start(ctx context.Context, log *zap.Logger) (*Stack, error) {
	if err := pingDockerDaemon(ctx); err != nil {
		return nil, fmt.Errorf("docker daemon not reachable: %w", err)
	}

	stack := &Stack{}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	stack.Network = nw
	networkName := nw.Name

	dbType := os.Getenv("DB_TYPE")
	dbNetworkName := os.Getenv("DB_HOST")
	tcpDbPort, err := nat.NewPort("tcp", os.Getenv("DB_PORT"))
	if err != nil {
		stack.Terminate(log)
		return nil, fmt.Errorf("failed to create database port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          dbInitEnv(dbType),
			WaitingFor:   wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		stack.Terminate(log)
		return nil, fmt.Errorf("failed to start database container: %w", err)
	}
	stack.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	stack.DBHostPort = fmt.Sprintf("%s:%s", dbHost, dbPort.Port())

	switch dbType {
	case "postgres":
		err = initPostgres(dbHost, dbPort)
	case "mysql", "mariadb":
		err = initMySQL(dbHost, dbPort)
	default:
		err = fmt.Errorf("unsupported DB_TYPE %q for the dev stack", dbType)
	}
	if err != nil {
		stack.Terminate(log)
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	authzNetworkName := "authorizer"
	tcpAuthzPort, err := nat.NewPort("tcp", os.Getenv("AUTHZ_PORT"))
	if err != nil {
		stack.Terminate(log)
		return nil, fmt.Errorf("failed to create authorizer port: %w", err)
	}

	adminSecret := os.Getenv("AUTHZ_ADMIN_SECRET")
	if adminSecret == "" {
		adminSecret = uuid.New().String()
		log.Info("generated authorizer admin secret", zap.String("admin_secret", adminSecret))
	}

	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("AUTHZ_IMAGE"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     os.Getenv("AUTHZ_CLIENT_ID"),
				"PORT":          os.Getenv("AUTHZ_PORT"),
				"DATABASE_TYPE": dbType,
				"DATABASE_NAME": os.Getenv("AUTHZ_DATABASE"),
				"DATABASE_URL":  authzDatabaseURL(dbType, dbNetworkName),
				"ADMIN_SECRET":  adminSecret,
				"ROLES":         "user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     "info",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {authzNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		stack.Terminate(log)
		return nil, fmt.Errorf("failed to start authorizer container: %w", err)
	}
	stack.AuthorizerContainer = authorizerContainer

	authzHost, _ := authorizerContainer.Host(ctx)
	authzPort, _ := authorizerContainer.MappedPort(ctx, tcpAuthzPort)
	stack.AuthorizerURL = fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())

	log.Info("development stack started",
		zap.String("db", stack.DBHostPort),
		zap.String("authz_url", stack.AuthorizerURL))
	return stack, nil
}

func pingDockerDaemon(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()
	_, err = cli.Ping(ctx)
	return err
}

func dbInitEnv(dbType string) map[string]string {
	switch dbType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": os.Getenv("DB_PASSWORD"),
			"POSTGRES_USER":     os.Getenv("DB_USER"),
			"POSTGRES_DB":       os.Getenv("DB_DATABASE"),
		}
	case "mariadb", "mysql":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
			"MYSQL_DATABASE":      os.Getenv("DB_DATABASE"),
			"MYSQL_USER":          os.Getenv("DB_USER"),
			"MYSQL_PASSWORD":      os.Getenv("DB_PASSWORD"),
		}
	}
	return nil
}

func authzDatabaseURL(dbType, dbNetworkName string) string {
	switch dbType {
	case "postgres":
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			dbNetworkName, os.Getenv("DB_PORT"), os.Getenv("AUTHZ_DATABASE"))
	default:
		return fmt.Sprintf("root:%s@tcp(%s:%s)/%s",
			os.Getenv("DB_ROOT_PASSWORD"), dbNetworkName,
			os.Getenv("DB_PORT"), os.Getenv("AUTHZ_DATABASE"))
	}
}

// initPostgres creates the Authorizer database and installs the application
// enum types.
func initPostgres(dbHost string, dbPort nat.Port) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"), dbPort.Port())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres for setup: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	for i := 0; i < 30; i++ {
		if err = sqlDB.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("postgres not ready after 30 seconds: %w", err)
	}

	var exists int64
	db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", os.Getenv("AUTHZ_DATABASE")).Scan(&exists)
	if exists == 0 {
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", os.Getenv("AUTHZ_DATABASE"))).Error; err != nil {
			return fmt.Errorf("failed to create authorizer database: %w", err)
		}
	}

	if err := db.Exec(data.InitdbPostgresEnums).Error; err != nil {
		return fmt.Errorf("failed to install enum types: %w", err)
	}
	return nil
}

// initMySQL creates the application and Authorizer databases and the
// application user.
func initMySQL(dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/",
		os.Getenv("DB_ROOT_PASSWORD"), dbHost, dbPort.Port()))
	if err != nil {
		return fmt.Errorf("failed to connect to mysql for setup: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("mysql not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", os.Getenv("DB_DATABASE")),
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", os.Getenv("AUTHZ_DATABASE")),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'",
			os.Getenv("DB_DATABASE"), os.Getenv("DB_USER")),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, stmt)
		}
	}
	return nil
}
