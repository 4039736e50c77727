package tabulated

// Version is the tabula release version.
const Version = "0.1.0"
