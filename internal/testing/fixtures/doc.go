// Package fixtures provides factories for users and events in store-backed
// tests. Factories write through the real repositories, so records look the
// same as those the API creates.
//
//	tdb := testdb.New(t)
//	defer tdb.Close()
//
//	f := fixtures.New(tdb.DB)
//	owner := f.CreateUser(t)
//	event := f.CreateEvent(t, owner, fixtures.WithoutDates())
package fixtures
