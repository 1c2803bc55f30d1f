// Package jobs ranks catalog roles against a candidate's confirmed skills.
package jobs

import "github.com/spigell/resume-analyzer/internal/profile"

// DefaultCatalog is the built-in list of roles in declaration order.
// Required skills name taxonomy categories or individual keywords.
var DefaultCatalog = []profile.JobTemplate{
	{
		ID:             "software_engineer",
		Title:          "Software Engineer",
		Description:    "Develop and maintain software applications using modern technologies.",
		RequiredSkills: []string{"programming", "frameworks", "databases"},
		SalaryRange:    "₹6-15 LPA",
		GrowthPath:     "Senior Software Engineer → Technical Lead → Engineering Manager",
	},
	{
		ID:             "data_scientist",
		Title:          "Data Scientist",
		Description:    "Analyze complex data sets and develop machine learning models.",
		RequiredSkills: []string{"python", "machine learning", "data analysis"},
		SalaryRange:    "₹8-20 LPA",
		GrowthPath:     "Senior Data Scientist → Data Science Lead → Chief Data Scientist",
	},
	{
		ID:             "devops_engineer",
		Title:          "DevOps Engineer",
		Description:    "Manage and optimize cloud infrastructure and deployment pipelines.",
		RequiredSkills: []string{"cloud", "tools", "programming"},
		SalaryRange:    "₹7-18 LPA",
		GrowthPath:     "Senior DevOps Engineer → DevOps Lead → Cloud Architect",
	},
	{
		ID:             "full_stack_developer",
		Title:          "Full Stack Developer",
		Description:    "Develop end-to-end web applications using modern frameworks.",
		RequiredSkills: []string{"programming", "frameworks", "web"},
		SalaryRange:    "₹5-12 LPA",
		GrowthPath:     "Senior Full Stack Developer → Technical Lead → Solution Architect",
	},
	{
		ID:             "mobile_developer",
		Title:          "Mobile Developer",
		Description:    "Develop mobile applications for iOS and Android platforms.",
		RequiredSkills: []string{"mobile", "programming", "frameworks"},
		SalaryRange:    "₹6-15 LPA",
		GrowthPath:     "Senior Mobile Developer → Mobile Lead → Mobile Architect",
	},
}
