package db

import (
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("migrations", func() {
	DescribeTable("pgx5URL",
		func(dsn, expected string) {
			Expect(pgx5URL(dsn)).To(Equal(expected))
		},
		Entry("postgres scheme", "postgres://u:p@db:5432/invoicely?sslmode=disable", "pgx5://u:p@db:5432/invoicely?sslmode=disable"),
		Entry("postgresql scheme", "postgresql://db/invoicely", "pgx5://db/invoicely"),
		Entry("already pgx5", "pgx5://db/invoicely", "pgx5://db/invoicely"),
	)

	It("embeds an up and a down file for every migration", func() {
		ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
		Expect(err).NotTo(HaveOccurred())
		downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
		Expect(err).NotTo(HaveOccurred())

		Expect(ups).NotTo(BeEmpty())
		Expect(downs).To(HaveLen(len(ups)))
	})
})
