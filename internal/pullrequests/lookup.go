package pullrequests

// Lookup is a validated get_pr request. It is either a CommitLookup or a DirectLookup.
type Lookup interface {
	repositoryArgument() string
	workingDirectoryArgument() string
}

// CommitLookup resolves the pull request associated with a commit reference.
type CommitLookup struct {
	Commit           string
	Repository       string
	WorkingDirectory string
}

// DirectLookup fetches a pull request by number.
type DirectLookup struct {
	Number           int
	Repository       string
	WorkingDirectory string
}

func (lookup CommitLookup) repositoryArgument() string {
	return lookup.Repository
}

func (lookup CommitLookup) workingDirectoryArgument() string {
	return lookup.WorkingDirectory
}

func (lookup DirectLookup) repositoryArgument() string {
	return lookup.Repository
}

func (lookup DirectLookup) workingDirectoryArgument() string {
	return lookup.WorkingDirectory
}
