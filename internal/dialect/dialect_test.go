package dialect

import (
	"database/sql"
	"strings"
	"testing"
)

func TestGetDialect(t *testing.T) {
	if _, ok := GetDialect("mysql").(*MysqlDialect); !ok {
		t.Errorf("mysql driver should map to MysqlDialect")
	}
	if _, ok := GetDialect("postgres").(*PostgresDialect); !ok {
		t.Errorf("postgres driver should map to PostgresDialect")
	}
	if _, ok := GetDialect("sqlserver").(*MSSQLDialect); !ok {
		t.Errorf("sqlserver driver should map to MSSQLDialect")
	}
	if _, ok := GetDialect("mssql").(*MSSQLDialect); !ok {
		t.Errorf("mssql driver should map to MSSQLDialect")
	}
	if _, ok := GetDialect("oracle").(*OracleDialect); !ok {
		t.Errorf("oracle driver should map to OracleDialect")
	}
	if _, ok := GetDialect("sqlite3").(*SQLiteDialect); !ok {
		t.Errorf("sqlite3 driver should map to SQLiteDialect")
	}
	if _, ok := GetDialect("unknown").(*MysqlDialect); !ok {
		t.Errorf("unknown driver should fall back to MysqlDialect")
	}
}

func TestColumnClause(t *testing.T) {
	cases := []struct {
		name string
		def  ColumnDefinition
		want string
	}{
		{
			"not null without default",
			ColumnDefinition{Type: "int", Nullable: false},
			"int NOT NULL",
		},
		{
			"nullable without default gets explicit DEFAULT NULL",
			ColumnDefinition{Type: "varchar(255)", Nullable: true},
			"varchar(255) NULL DEFAULT NULL",
		},
		{
			"nullable with default",
			ColumnDefinition{Type: "varchar(50)", Nullable: true, Default: sql.NullString{String: "pending", Valid: true}},
			"varchar(50) NULL DEFAULT 'pending'",
		},
		{
			"not null with default",
			ColumnDefinition{Type: "int", Nullable: false, Default: sql.NullString{String: "0", Valid: true}},
			"int NOT NULL DEFAULT '0'",
		},
		{
			"extra attribute is appended",
			ColumnDefinition{Type: "int", Nullable: false, Extra: "auto_increment"},
			"int NOT NULL auto_increment",
		},
	}

	for _, tc := range cases {
		if got := ColumnClause(tc.def); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestBuildCreateTable(t *testing.T) {
	defs := []ColumnDefinition{
		{Name: "id", Type: "int", Nullable: false, Key: "PRI"},
		{Name: "email", Type: "varchar(255)", Nullable: true},
	}
	quote := func(s string) string { return "`" + s + "`" }

	got := BuildCreateTable("users", defs, quote)
	want := "CREATE TABLE `users` (\n" +
		"  `id` int NOT NULL,\n" +
		"  `email` varchar(255) NULL DEFAULT NULL,\n" +
		"  PRIMARY KEY (`id`)\n" +
		")"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMysqlStatements(t *testing.T) {
	d := &MysqlDialect{}
	def := ColumnDefinition{Name: "email", Type: "varchar(255)", Nullable: true}

	add := d.AddColumnStatement("users", def)
	if add != "ALTER TABLE `users` ADD COLUMN `email` varchar(255) NULL DEFAULT NULL;" {
		t.Errorf("unexpected add statement: %s", add)
	}
	mod := d.ModifyColumnStatement("users", def)
	if mod != "ALTER TABLE `users` MODIFY COLUMN `email` varchar(255) NULL DEFAULT NULL;" {
		t.Errorf("unexpected modify statement: %s", mod)
	}
}

func TestMysqlColumnQueryEscapesQuotes(t *testing.T) {
	d := &MysqlDialect{}

	got := d.columnDefinitionQuery("users", "o'clock")
	want := "SHOW COLUMNS FROM `users` WHERE Field = 'o''clock'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = d.columnDefinitionQuery("users", "email")
	want = "SHOW COLUMNS FROM `users` WHERE Field = 'email'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPostgresModifySplitsStatements(t *testing.T) {
	d := &PostgresDialect{}

	mod := d.ModifyColumnStatement("users", ColumnDefinition{Name: "name", Type: "varchar(100)", Nullable: false})
	if !strings.Contains(mod, `ALTER TABLE "users" ALTER COLUMN "name" TYPE varchar(100);`) {
		t.Errorf("missing type change: %s", mod)
	}
	if !strings.Contains(mod, `SET NOT NULL;`) {
		t.Errorf("NOT NULL column should set the constraint: %s", mod)
	}

	mod = d.ModifyColumnStatement("users", ColumnDefinition{Name: "name", Type: "text", Nullable: true})
	if !strings.Contains(mod, `DROP NOT NULL;`) {
		t.Errorf("nullable column should drop the constraint: %s", mod)
	}
}

func TestMSSQLStatements(t *testing.T) {
	d := &MSSQLDialect{}
	def := ColumnDefinition{Name: "email", Type: "varchar(255)", Nullable: true}

	add := d.AddColumnStatement("users", def)
	if add != "ALTER TABLE [users] ADD [email] varchar(255) NULL DEFAULT NULL;" {
		t.Errorf("unexpected add statement: %s", add)
	}
	mod := d.ModifyColumnStatement("users", def)
	if mod != "ALTER TABLE [users] ALTER COLUMN [email] varchar(255) NULL;" {
		t.Errorf("ALTER COLUMN must not carry a default clause: %s", mod)
	}
}

func TestOracleStatements(t *testing.T) {
	d := &OracleDialect{}
	def := ColumnDefinition{Name: "EMAIL", Type: "VARCHAR2(255)", Nullable: false}

	add := d.AddColumnStatement("USERS", def)
	if add != "ALTER TABLE USERS ADD (EMAIL VARCHAR2(255) NOT NULL);" {
		t.Errorf("unexpected add statement: %s", add)
	}
	mod := d.ModifyColumnStatement("USERS", def)
	if mod != "ALTER TABLE USERS MODIFY (EMAIL VARCHAR2(255) NOT NULL);" {
		t.Errorf("unexpected modify statement: %s", mod)
	}
}

func TestSQLiteModifyIsComment(t *testing.T) {
	d := &SQLiteDialect{}
	mod := d.ModifyColumnStatement("users", ColumnDefinition{Name: "email", Type: "TEXT", Nullable: true})
	if !strings.HasPrefix(mod, "--") {
		t.Errorf("SQLite cannot modify columns; expected a comment, got: %s", mod)
	}
}

func TestSchemaNameDefaults(t *testing.T) {
	cases := []struct {
		d     Dialect
		input string
		want  string
	}{
		{&MysqlDialect{}, "sakila", "sakila"},
		{&PostgresDialect{}, "", "public"},
		{&PostgresDialect{}, "billing", "billing"},
		{&MSSQLDialect{}, "", "dbo"},
		{&SQLiteDialect{}, "", "main"},
	}
	for _, tc := range cases {
		if got := tc.d.SchemaName(tc.input); got != tc.want {
			t.Errorf("%T.SchemaName(%q) = %q, want %q", tc.d, tc.input, got, tc.want)
		}
	}
}
