package diff

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"db-diff/internal/schema"
)

func col(table, column, dataType string, nullable bool) schema.ColumnDescriptor {
	return schema.ColumnDescriptor{
		Source:   "test",
		Table:    table,
		Column:   column,
		DataType: dataType,
		Nullable: nullable,
	}
}

func snap(cols ...schema.ColumnDescriptor) schema.Snapshot {
	return schema.Snapshot{Source: "test", Columns: cols}
}

func TestCompareEmptyMaster(t *testing.T) {
	master := snap()
	target := snap(col("users", "id", "int", false))

	if records := Compare(master, target); records != nil {
		t.Errorf("expected no records for empty master, got %d", len(records))
	}
}

func TestCompareIdentical(t *testing.T) {
	a := snap(
		col("users", "id", "int", false),
		col("users", "name", "varchar(255)", true),
	)
	b := snap(
		col("users", "id", "int", false),
		col("users", "name", "varchar(255)", true),
	)

	if records := Compare(a, b); len(records) != 0 {
		t.Errorf("expected no records for identical snapshots, got %v", records)
	}
}

func TestCompareEmptyTarget(t *testing.T) {
	master := snap(
		col("orders", "id", "int", false),
		col("users", "id", "int", false),
	)

	records := Compare(master, snap())
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, table := range []string{"orders", "users"} {
		if records[i].Kind != MissingTable || records[i].Table != table {
			t.Errorf("record %d: expected MissingTable %s, got %v", i, table, records[i])
		}
		if records[i].Column != AllColumns {
			t.Errorf("record %d: table-level record should use column %q, got %q", i, AllColumns, records[i].Column)
		}
		if records[i].MasterValue != "Exists" || records[i].TargetValue != "Missing" {
			t.Errorf("record %d: unexpected values %q/%q", i, records[i].MasterValue, records[i].TargetValue)
		}
	}
}

func TestCompareTablePresence(t *testing.T) {
	master := snap(col("users", "id", "int", false))
	target := snap(col("audit_log", "id", "int", false))

	records := Compare(master, target)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", records)
	}
	if records[0].Kind != MissingTable || records[0].Table != "users" {
		t.Errorf("expected missing users table, got %v", records[0])
	}
	if records[1].Kind != ExtraTable || records[1].Table != "audit_log" {
		t.Errorf("expected extra audit_log table, got %v", records[1])
	}
	if records[1].MasterValue != "Missing" || records[1].TargetValue != "Exists" {
		t.Errorf("extra table values inverted: %v", records[1])
	}
}

func TestCompareColumnPresence(t *testing.T) {
	master := snap(
		col("users", "id", "int", false),
		col("users", "email", "varchar(255)", true),
	)
	target := snap(
		col("users", "id", "int", false),
		col("users", "legacy_flag", "tinyint(1)", true),
	)

	records := Compare(master, target)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", records)
	}
	if records[0].Kind != MissingColumn || records[0].Column != "email" {
		t.Errorf("expected missing email column, got %v", records[0])
	}
	if records[1].Kind != ExtraColumn || records[1].Column != "legacy_flag" {
		t.Errorf("expected extra legacy_flag column, got %v", records[1])
	}
}

func TestCompareMismatches(t *testing.T) {
	master := snap(
		col("users", "name", "varchar(100)", false),
		col("users", "bio", "text", true),
	)
	target := snap(
		col("users", "name", "varchar(50)", false),
		col("users", "bio", "text", false),
	)

	records := Compare(master, target)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", records)
	}
	if records[0].Kind != NullableMismatch || records[0].Column != "bio" {
		t.Errorf("expected nullable mismatch on bio, got %v", records[0])
	}
	if records[0].MasterValue != "true" || records[0].TargetValue != "false" {
		t.Errorf("unexpected nullable values: %v", records[0])
	}
	if records[1].Kind != TypeMismatch || records[1].Column != "name" {
		t.Errorf("expected type mismatch on name, got %v", records[1])
	}
	if records[1].MasterValue != "varchar(100)" || records[1].TargetValue != "varchar(50)" {
		t.Errorf("unexpected type values: %v", records[1])
	}
}

func TestCompareCaseSensitive(t *testing.T) {
	master := snap(col("Users", "id", "int", false))
	target := snap(col("users", "id", "int", false))

	records := Compare(master, target)
	if len(records) != 2 {
		t.Fatalf("expected Users/users to be distinct tables, got %v", records)
	}
	if records[0].Kind != MissingTable || records[1].Kind != ExtraTable {
		t.Errorf("unexpected kinds: %v", records)
	}
}

func TestCompareDeterministic(t *testing.T) {
	// Same structure, different row discovery order.
	a := snap(
		col("users", "id", "int", false),
		col("users", "email", "varchar(255)", true),
		col("orders", "id", "int", false),
	)
	b := snap(
		col("orders", "id", "int", false),
		col("users", "email", "varchar(255)", true),
		col("users", "id", "int", false),
	)
	target := snap(col("users", "id", "bigint", false))

	first := Compare(a, target)
	second := Compare(b, target)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("row order changed the result:\n%v\n%v", first, second)
	}
	if first[0].Table != "orders" {
		t.Errorf("table records should come out sorted, got %v", first)
	}
}

func TestCompareRandomSelfIdentity(t *testing.T) {
	faker := gofakeit.New(7)

	var cols []schema.ColumnDescriptor
	for i := 0; i < faker.Number(5, 15); i++ {
		table := fmt.Sprintf("%s_%d", faker.Word(), i)
		for j := 0; j < faker.Number(1, 10); j++ {
			cols = append(cols, col(
				table,
				fmt.Sprintf("%s_%d", faker.Word(), j),
				faker.RandomString([]string{"int", "bigint", "varchar(255)", "text", "datetime"}),
				faker.Bool(),
			))
		}
	}

	if records := Compare(snap(cols...), snap(cols...)); len(records) != 0 {
		t.Errorf("snapshot differs from itself: %v", records)
	}
}
