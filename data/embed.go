package data

import (
	_ "embed"
)

//go:embed initdb/postgres/001-ddl-enums.sql
var InitdbPostgresEnums string
