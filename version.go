package sdk

// Version is the published SDK version.
// 0.3.0: Breaking - Optional fields are codec.Optional and enums are codec.Enum.
// 0.2.0: Add quote-to-invoice conversion and absence search.
const Version = "0.3.0"
