package jobs

// SupportedLocations returns the curated location list offered to search
// clients.
func SupportedLocations() []string {
	return []string{
		"Amsterdam, Netherlands", "Atlanta, USA", "Austin, USA", "Bangalore, India", "Barcelona, Spain",
		"Berlin, Germany", "Boston, USA", "Cairo, Egypt", "Chicago, USA", "Dallas, USA",
		"Delhi, India", "Dubai, UAE", "Dublin, Ireland", "Frankfurt, Germany", "Hong Kong, China",
		"Houston, USA", "Istanbul, Turkey", "London, UK", "Los Angeles, USA", "Madrid, Spain",
		"Melbourne, Australia", "Miami, USA", "Milan, Italy", "Mumbai, India", "Munich, Germany",
		"New York, USA", "Paris, France", "Philadelphia, USA", "San Francisco, USA", "Seattle, USA",
		"Singapore, Singapore", "Sydney, Australia", "Tokyo, Japan", "Toronto, Canada", "Zurich, Switzerland",
	}
}

// PopularJobTitles returns the curated title list offered to search clients.
func PopularJobTitles() []string {
	return []string{
		"Software Engineer", "Data Scientist", "Product Manager", "UX/UI Designer",
		"DevOps Engineer", "Full Stack Developer", "Backend Developer", "Frontend Developer",
		"Machine Learning Engineer", "Cloud Architect", "Cybersecurity Analyst", "Business Analyst",
		"Project Manager", "Marketing Manager", "Sales Manager", "HR Manager",
		"Financial Analyst", "Operations Manager", "Customer Success Manager", "Technical Writer",
	}
}
