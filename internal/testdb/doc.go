// Package testdb provides utilities specifically for database testing.
//
// Integration tests call GetTestDBWithT, which skips the test unless
// DATABASE_URL (or TASKS_TEST_DB_URL) points at a PostgreSQL instance, then
// SetupTestDatabaseSchema to apply the embedded goose migrations. Each test
// body runs inside WithTx so its writes are rolled back afterwards:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.SetupTestDatabaseSchema(t, db)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		userStore := postgres.NewPostgresUserStore(tx, nil)
//		...
//	})
package testdb
