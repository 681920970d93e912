package extract

// LinkedIn job-view markup, newest layout first. These change without notice;
// keep the older variants at the end rather than deleting them.
var (
	TitleSelectors = SelectorList{
		"h1.job-details-jobs-unified-top-card__job-title",
		"h1.jobs-unified-top-card__job-title",
		"h1.top-card-layout__title",
		"h1",
	}

	CompanySelectors = SelectorList{
		".job-details-jobs-unified-top-card__company-name a",
		".job-details-jobs-unified-top-card__company-name",
		"a.jobs-unified-top-card__company-name",
		"a.topcard__org-name-link",
		"[data-test-company-name]",
		"a[href*='/company/'] span",
		"a[href*='/company/']",
	}

	// The unified top card packs "City, ST · 3 days ago · Remote" into one
	// element, so the work mode keyword can arrive embedded in the location.
	LocationSelectors = SelectorList{
		"[data-test-job-location]",
		".job-details-jobs-unified-top-card__primary-description-container .tvm__text",
		".jobs-unified-top-card__bullet",
		".topcard__flavor--bullet",
		".jobs-unified-top-card__workplace-type",
		".topcard__flavor",
	}

	DescriptionSelectors = SelectorList{
		".jobs-description__content",
		".jobs-box__html-content",
		"[data-test='job-description']",
		".description__text",
		"#job-details",
		"article",
	}

	// Candidates for the workplace-type pills. Exact text is matched later.
	LabelSelectors = "button, span, li, a, strong, div.job-details-preferences-and-skills__pill"
)
