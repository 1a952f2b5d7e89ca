// Command speakersplit isolates individual speakers from a recording using a
// diarization annotation.
//
// Subcommands:
//
//	isolate <audio> <annotation>   write <name>_speaker_<id>.wav per speaker
//	speakers <annotation>          summarise speakers and speech time
//	history                        list recorded runs
//	config init|validate|show      manage the TOML configuration
//
// Configuration is loaded lazily on first use; commands annotated with
// skipConfigLoad (config init) run without it.
package main
