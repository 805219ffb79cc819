package ui

// iconBytes is a 16x16 PNG tray icon.
var iconBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0xf3, 0xff, 0x61, 0x00, 0x00, 0x00,
	0x31, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0xa0, 0x0e, 0x98,
	0xf6, 0x9f, 0x3c, 0x3c, 0xe4, 0x0c, 0x00, 0x01, 0xb2, 0x0d, 0x80, 0x01,
	0x92, 0x0d, 0x40, 0x07, 0x44, 0x1b, 0x80, 0x0b, 0xd0, 0xcf, 0x00, 0x8a,
	0xbd, 0x40, 0xb5, 0x40, 0xa4, 0x5a, 0x34, 0x0e, 0xfa, 0xa4, 0x4c, 0x3e,
	0x00, 0x00, 0xf5, 0x0c, 0x74, 0x9a, 0xb3, 0xfa, 0xa5, 0x7d, 0x00, 0x00,
	0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
