package util

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"testing"

	"crm_system/constants"
	"crm_system/custom/apperr"

	"github.com/joho/godotenv"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type JobConfig struct {
	Graphql_endpoint          string `yaml:"graphql_endpoint"`
	Heartbeat_log_file        string `yaml:"heartbeat_log_file"`
	Report_log_file           string `yaml:"report_log_file"`
	Reminder_log_file         string `yaml:"reminder_log_file"`
	Heartbeat_timeout_seconds int    `yaml:"heartbeat_timeout_seconds"`
	Http_timeout_seconds      int    `yaml:"http_timeout_seconds"`
	Reminder_window_days      int    `yaml:"reminder_window_days"`
	Heartbeat_schedule        string `yaml:"heartbeat_schedule"`
	Report_schedule           string `yaml:"report_schedule"`
	Reminder_schedule         string `yaml:"reminder_schedule"`
}

type ServerConfig struct {
	Postgres          DbConfig  `yaml:"postgres"`
	Crm_port          int       `yaml:"crm_port"`
	Restock_threshold int       `yaml:"restock_threshold"`
	Restock_amount    int       `yaml:"restock_amount"`
	Jobs              JobConfig `yaml:"jobs"`
}

func (c *ServerConfig) GetConf(fileName string) *ServerConfig {
	_ = godotenv.Load() // load .env if it exists
	yamlFile, err := os.ReadFile(fileName)
	if err != nil {
		log.Printf("Read yaml file %s failed: %s ", fileName, err.Error())
	} else {
		err = yaml.Unmarshal(yamlFile, c)
		if err != nil {
			log.Fatalf("Unmarshal: %v", err)
		}
	}
	c.applyEnvOverrides()
	c.applyDefaults()

	return c
}

func (c *ServerConfig) applyEnvOverrides() {
	if v := os.Getenv("CRM_POSTGRES_HOST"); v != "" {
		c.Postgres.Host = v
	}
	if v := os.Getenv("CRM_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Postgres.Port = port
		}
	}
	if v := os.Getenv("CRM_POSTGRES_USER"); v != "" {
		c.Postgres.Username = v
	}
	if v := os.Getenv("CRM_POSTGRES_PASSWORD"); v != "" {
		c.Postgres.Password = v
	}
	if v := os.Getenv("CRM_POSTGRES_DB"); v != "" {
		c.Postgres.Database = v
	}
	if v := os.Getenv("CRM_GRAPHQL_ENDPOINT"); v != "" {
		c.Jobs.Graphql_endpoint = v
	}
	if v := os.Getenv("CRM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Crm_port = port
		}
	}
}

func (c *ServerConfig) applyDefaults() {
	if c.Crm_port == 0 {
		c.Crm_port = 8080
	}
	if c.Restock_threshold == 0 {
		c.Restock_threshold = constants.DEFAULT_RESTOCK_THRESHOLD
	}
	if c.Restock_amount == 0 {
		c.Restock_amount = constants.DEFAULT_RESTOCK_AMOUNT
	}
	if c.Jobs.Graphql_endpoint == "" {
		c.Jobs.Graphql_endpoint = fmt.Sprintf("http://localhost:%d/graphql", c.Crm_port)
	}
	if c.Jobs.Heartbeat_log_file == "" {
		c.Jobs.Heartbeat_log_file = "/tmp/crm_heartbeat_log.txt"
	}
	if c.Jobs.Report_log_file == "" {
		c.Jobs.Report_log_file = "/tmp/crm_report_log.txt"
	}
	if c.Jobs.Reminder_log_file == "" {
		c.Jobs.Reminder_log_file = "/tmp/order_reminders_log.txt"
	}
	if c.Jobs.Heartbeat_timeout_seconds == 0 {
		c.Jobs.Heartbeat_timeout_seconds = 5
	}
	if c.Jobs.Http_timeout_seconds == 0 {
		c.Jobs.Http_timeout_seconds = 10
	}
	if c.Jobs.Reminder_window_days == 0 {
		c.Jobs.Reminder_window_days = constants.DEFAULT_REMINDER_WINDOW_DAYS
	}
	if c.Jobs.Heartbeat_schedule == "" {
		c.Jobs.Heartbeat_schedule = "@every 5m"
	}
	if c.Jobs.Report_schedule == "" {
		c.Jobs.Report_schedule = "@weekly"
	}
	if c.Jobs.Reminder_schedule == "" {
		c.Jobs.Reminder_schedule = "@daily"
	}
}

func GetStringPtr(s string) *string {
	return &s
}

// OrderClause translates an orderBy argument ("field" or "-field") into a
// SQL order clause, rejecting fields outside the allowed set.
func OrderClause(orderBy string, allowed map[string]string) (string, error) {
	field := strings.TrimPrefix(orderBy, "-")
	column, ok := allowed[field]
	if !ok {
		return "", apperr.Validation("Cannot order by %s", orderBy)
	}
	if strings.HasPrefix(orderBy, "-") {
		return column + " DESC", nil
	}
	return column, nil
}

// DbMock For unit test usage
func DbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		t.Fatal(err)
	}

	return sqldb, gormdb, mock
}

