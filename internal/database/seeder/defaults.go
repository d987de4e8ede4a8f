package seeder

// Demo returns the seeders for a local demo database: accounts first, then
// the candidate profiles and roles that reference them.
func Demo() []Seeder {
	return []Seeder{
		AccountsSeeder{},
		CandidatesSeeder{},
		RolesSeeder{},
	}
}
