// Package testdb provides test database utilities for store-backed tests.
//
// Each TestDB gets its own namespace with the embedded migrations applied:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    repo := repository.NewEventRepository(tdb.DB)
//	}
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and
// TEST_DB_PASSWORD. When no SurrealDB instance answers, the test is skipped.
package testdb
