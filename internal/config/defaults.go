package config

const (
	defaultConfigPath          = "~/.config/apmeta/config.toml"
	defaultLogDir              = "~/.local/share/apmeta/logs"
	defaultCatalogPath         = "~/.local/share/apmeta/catalog.db"
	defaultArtistsCSV          = "~/.config/apmeta/resources/artists.csv"
	defaultCycleSubjectsXML    = "~/.config/apmeta/resources/cycles.xml"
	defaultSiegfriedBinary     = "sf"
	defaultMediaInfoBinary     = "mediainfo"
	defaultFuzzyThreshold      = 0.8
	defaultExifReadSizeBytes   = 128 * 1024
	defaultConcurrency         = 4
	defaultChecksumAlgorithm   = ChecksumSHA256
	defaultLocationOfOriginals = "ARCHIVE_445 Server"
	defaultViewer              = "libreoffice"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 30
	debugDumpFilename          = "last-output-debug.json"

	// ArtistsEnv overrides resources.artists_csv.
	ArtistsEnv = "APMETA_ARTISTS_CSV"
	// CyclesEnv overrides resources.cycle_subjects_xml.
	CyclesEnv = "APMETA_CYCLES_XML"
)

// Supported checksum algorithms.
const (
	ChecksumSHA256 = "sha256"
	ChecksumXXHash = "xxhash"
)

var (
	defaultPathNoiseSegments    = []string{"Volumes", "Archive"}
	defaultProgramAbbreviations = []string{"IAIR", "WW", "HS"}
	defaultViewerArgs           = []string{"--calc", "--infilter=CSV:44,34,76,1"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:      defaultLogDir,
			CatalogPath: defaultCatalogPath,
		},
		Resources: Resources{
			ArtistsCSV:       defaultArtistsCSV,
			CycleSubjectsXML: defaultCycleSubjectsXML,
		},
		Tools: Tools{
			Siegfried: defaultSiegfriedBinary,
			MediaInfo: defaultMediaInfoBinary,
		},
		Define: Define{
			Recurse:                      false,
			IncludeExtInTitle:            false,
			FuzzyArtistMatchMinThreshold: defaultFuzzyThreshold,
			ExifReadSizeBytes:            defaultExifReadSizeBytes,
			Concurrency:                  defaultConcurrency,
			ChecksumAlgorithm:            defaultChecksumAlgorithm,
			LocationOfOriginals:          defaultLocationOfOriginals,
			PathNoiseSegments:            append([]string(nil), defaultPathNoiseSegments...),
			ProgramAbbreviations:         append([]string(nil), defaultProgramAbbreviations...),
		},
		Inspect: Inspect{
			Viewer:     defaultViewer,
			ViewerArgs: append([]string(nil), defaultViewerArgs...),
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
