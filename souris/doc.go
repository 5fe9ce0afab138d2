// Package souris implements the recursive, type-tagged, bit-packed Value
// codec (§4.5) and its Timestamp payload (§3.3/§4.5's seven-integer calendar
// encoding), the core of the wire format every other package in this module
// builds on.
//
// A Value is encoded by walking it once: a single type byte packs the
// variant's tag into its top five bits and repurposes the low three bits
// ("niche" bits) for whatever small piece of information that variant can
// carry inline — a boolean, a signed-state bit, or a collection length under
// three. Decoding is driven purely by the byte stream; there is no separate
// schema to consult.
package souris
