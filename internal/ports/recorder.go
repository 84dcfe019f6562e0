package ports

// Recorder counts what commands produce
type Recorder interface {
	RecordMinted(n int)
	RecordProject()
	RecordArtifacts(mode string, n int)
	RecordCrawl(n int)
	RecordJoin(kind string, joined, dropped int)
}
