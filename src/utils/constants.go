package utils

const ShortDashDateLayout = "2006-01-02"

// DateTimeLayout is used for timestamps written to exported spreadsheets.
const DateTimeLayout = "2006-01-02 15:04:05"
