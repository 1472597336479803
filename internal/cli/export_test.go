package cli

// Export internal functions for testing.

// RunTranscribe exports runTranscribe for testing.
var RunTranscribe = runTranscribe

// ParseTranscribeOptions exports parseTranscribeOptions for testing.
var ParseTranscribeOptions = parseTranscribeOptions

// TranscribeOptions exports transcribeOptions for testing.
type TranscribeOptions = transcribeOptions

// DeriveOutputPath exports deriveOutputPath for testing.
var DeriveOutputPath = deriveOutputPath

// SupportedFormatsList exports supportedFormatsList for testing.
var SupportedFormatsList = supportedFormatsList

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ValidConfigKeys exports validConfigKeys for testing.
var ValidConfigKeys = validConfigKeys

// RunListModels exports runListModels for testing.
var RunListModels = runListModels

// WriteTranscript exports writeTranscript for testing.
var WriteTranscript = writeTranscript

// ChunkArtifactsDir exports chunkArtifactsDir for testing.
var ChunkArtifactsDir = chunkArtifactsDir

// SaveChunkArtifacts exports saveChunkArtifacts for testing.
var SaveChunkArtifacts = saveChunkArtifacts

// CopyFile exports copyFile for testing.
var CopyFile = copyFile

// FileSize exports fileSize for testing.
var FileSize = fileSize
