package encode

func DeviceStatusMappingPaths() (dst, src []string) {
	for _, f := range deviceStatusFields {
		dst = append(dst, f.dst)
		src = append(src, f.src)
	}
	return dst, src
}

func CameraIOMappingPaths() (dst, src []string) {
	for _, f := range cameraIOFields {
		dst = append(dst, f.dst)
		src = append(src, f.src)
	}
	return dst, src
}
