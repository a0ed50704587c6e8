/*
go-vidmark burns per-entity detection overlays into video files.  It takes
the detection JSON document produced by an upstream vision analysis stage,
reconstructs a continuous per-entity timeline from the sparse per-frame
records, and composites bounding box and label badge overlays onto every
frame of the source video.

Detections typically come from a subsampled analysis pass and do not cover
every frame, so entity state on unobserved frames is linearly interpolated
between the two nearest observations, or held from the nearest one, under a
bounded gap policy.

The detect, timeline, label and render subpackages are pure transforms over
immutable inputs.  The pipeline subpackage drives the frame loop and owns
the video decoder and encoder resources.

See the vidmark command under cmd for CLI usage.
*/
package vidmark
